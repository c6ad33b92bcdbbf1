package model

// 前后端通信消息结构，Content 为 JSON 字符串
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 热处理方案请求
type PlanReq struct {
	G0    float64 `json:"g0"`    // 初始晶粒尺寸, μm
	Sigma float64 `json:"sigma"` // 目标屈服强度, MPa
}

// 热处理方案，Display 字段四舍五入后用于展示
type PlanResp struct {
	Material              string  `json:"material"`
	InitialGrainSize      float64 `json:"initial_grain_size"`
	TargetStrength        float64 `json:"target_strength"`
	FinalGrainSize        float64 `json:"final_grain_size"`
	AnnealingTime         float64 `json:"annealing_time"`
	FinalGrainSizeDisplay float64 `json:"final_grain_size_display"`
	AnnealingTimeDisplay  float64 `json:"annealing_time_display"`
	AnnealingTemperature  float64 `json:"annealing_temperature"`
}

// 炉子状态
type FurnaceStatus struct {
	Number   int       `json:"number"`
	State    string    `json:"state"`
	Progress int       `json:"progress"`
	Plan     *PlanResp `json:"plan,omitempty"`
}

type ErrorResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// 材料常数
type MaterialResp struct {
	Number               int     `json:"number"`
	Name                 string  `json:"name"`
	FrictionStress       float64 `json:"friction_stress"`
	HallPetchCoefficient float64 `json:"hall_petch_coefficient"`
	GrowthExponent       float64 `json:"growth_exponent"`
	GrowthRateConstant   float64 `json:"growth_rate_constant"`
	AnnealingTemperature float64 `json:"annealing_temperature"`
}
