package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"heattreat/steel_type"
)

// Plan 一次热处理的计算结果
type Plan struct {
	Material         string  `json:"material"`
	InitialGrainSize float64 `json:"initial_grain_size"` // d0, μm
	TargetStrength   float64 `json:"target_strength"`    // sigma, MPa
	FinalGrainSize   float64 `json:"final_grain_size"`   // d1, μm
	AnnealingTime    float64 `json:"annealing_time"`     // t, h
}

// Calculator 绑定材料常数和越界策略，本身不保存计算状态，可并发使用
type Calculator struct {
	steel  *steel_type.Steel
	policy Policy
}

func NewCalculator(steel *steel_type.Steel, policy Policy) *Calculator {
	if steel == nil {
		steel = steel_type.NewSteel()
	}
	if policy == "" {
		policy = PolicyStrict
	}
	return &Calculator{
		steel:  steel,
		policy: policy,
	}
}

func (c *Calculator) Material() *steel_type.Steel {
	return c.steel
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

func (c *Calculator) PredictGrainSize(sigma float64) (float64, error) {
	return PredictGrainSize(sigma, *c.steel.Parameter)
}

func (c *Calculator) PredictAnnealingTime(d0, d1 float64) (float64, error) {
	t, err := PredictAnnealingTime(d0, d1, *c.steel.Parameter)
	if err == nil || !IsUnreachableByAnnealing(err) {
		return t, err
	}

	fields := log.Fields{
		"material": c.steel.Name,
		"policy":   c.policy,
		"d0":       d0,
		"d1":       d1,
		"t":        t,
	}
	switch c.policy {
	case PolicyClamp:
		log.WithFields(fields).Warn("退火时间为负，按 0 处理")
		return 0, nil
	case PolicyWarn:
		log.WithFields(fields).Warn("退火时间为负")
		return t, nil
	default:
		return 0, err
	}
}

// Plan 先由目标强度求 d1，再由 d0、d1 求退火时间
func (c *Calculator) Plan(d0, sigma float64) (Plan, error) {
	d1, err := c.PredictGrainSize(sigma)
	if err != nil {
		return Plan{}, fmt.Errorf("predict grain size: %w", err)
	}
	t, err := c.PredictAnnealingTime(d0, d1)
	if err != nil {
		return Plan{}, fmt.Errorf("predict annealing time: %w", err)
	}

	log.WithFields(log.Fields{
		"material": c.steel.Name,
		"d0":       d0,
		"sigma":    sigma,
		"d1":       d1,
		"t":        t,
	}).Debug("计算热处理方案")
	return Plan{
		Material:         c.steel.Name,
		InitialGrainSize: d0,
		TargetStrength:   sigma,
		FinalGrainSize:   d1,
		AnnealingTime:    t,
	}, nil
}
