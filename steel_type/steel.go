package steel_type

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// 304L 不锈钢
const (
	Number304L = 304
	Name304L   = "304L"

	FrictionStress304L       = 180.0  // MPa
	HallPetchCoefficient304L = 7589.0 // MPa·μm^0.5
	GrowthExponent304L       = 2.0
	GrowthRateConstant304L   = 8075.0 // μm^n/h

	AnnealingTemperature304L = 1100.0 // ℃
)

type Steel struct {
	Number    int
	Name      string
	Parameter *Parameter
}

// Parameter 材料常数，一次计算内只读
type Parameter struct {
	FrictionStress       float64 `json:"friction_stress"`        // 摩擦应力 σ0, MPa
	HallPetchCoefficient float64 `json:"hall_petch_coefficient"` // Hall-Petch 系数 k, MPa·μm^0.5
	GrowthExponent       float64 `json:"growth_exponent"`        // 晶粒长大指数 n
	GrowthRateConstant   float64 `json:"growth_rate_constant"`   // 晶粒长大速率常数 K, μm^n/h
	AnnealingTemperature float64 `json:"annealing_temperature"`  // 退火温度, ℃
}

func Default304L() Parameter {
	return Parameter{
		FrictionStress:       FrictionStress304L,
		HallPetchCoefficient: HallPetchCoefficient304L,
		GrowthExponent:       GrowthExponent304L,
		GrowthRateConstant:   GrowthRateConstant304L,
		AnnealingTemperature: AnnealingTemperature304L,
	}
}

func NewSteel() *Steel {
	parameter := Default304L()
	return &Steel{
		Number:    Number304L,
		Name:      Name304L,
		Parameter: &parameter,
	}
}

// Load 从配置文件的 [material] 段读取材料常数，缺省值为 304L
func Load(section *ini.Section) (*Steel, error) {
	steel := NewSteel()
	steel.Name = section.Key("name").MustString(Name304L)
	steel.Parameter.FrictionStress = section.Key("friction_stress").MustFloat64(FrictionStress304L)
	steel.Parameter.HallPetchCoefficient = section.Key("hall_petch_coefficient").MustFloat64(HallPetchCoefficient304L)
	steel.Parameter.GrowthExponent = section.Key("growth_exponent").MustFloat64(GrowthExponent304L)
	steel.Parameter.GrowthRateConstant = section.Key("growth_rate_constant").MustFloat64(GrowthRateConstant304L)
	steel.Parameter.AnnealingTemperature = section.Key("annealing_temperature").MustFloat64(AnnealingTemperature304L)
	if err := steel.Parameter.Validate(); err != nil {
		return nil, fmt.Errorf("material %s: %w", steel.Name, err)
	}

	log.WithFields(log.Fields{
		"name":                   steel.Name,
		"friction_stress":        steel.Parameter.FrictionStress,
		"hall_petch_coefficient": steel.Parameter.HallPetchCoefficient,
		"growth_exponent":        steel.Parameter.GrowthExponent,
		"growth_rate_constant":   steel.Parameter.GrowthRateConstant,
	}).Info("设置材料参数")
	return steel, nil
}

func (p Parameter) Validate() error {
	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"friction_stress", p.FrictionStress, false},
		{"hall_petch_coefficient", p.HallPetchCoefficient, true},
		{"growth_exponent", p.GrowthExponent, true},
		{"growth_rate_constant", p.GrowthRateConstant, true},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%s must be finite, got %v", c.name, c.value)
		}
		if c.positive && c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", c.name, c.value)
		}
	}
	return nil
}
