package calculator

import (
	"math"

	"heattreat/steel_type"
)

// PredictGrainSize 根据目标屈服强度反解 Hall-Petch 关系，得到所需的最终晶粒尺寸
//
//	sigma = sigma_0 + k * d^(-1/2)  =>  d = ((sigma - sigma_0) / k)^(-2)
//
// sigma 单位 MPa，返回值单位 μm。
func PredictGrainSize(sigma float64, p steel_type.Parameter) (float64, error) {
	fields := map[string]float64{
		"sigma":   sigma,
		"sigma_0": p.FrictionStress,
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return 0, newDomainError(ErrCodeInvalidInput, "target yield strength must be a finite number", fields)
	}
	if sigma == p.FrictionStress {
		return 0, newDomainError(ErrCodeBelowFrictionStress, "strength below material floor — cannot solve", fields)
	}
	if sigma < p.FrictionStress {
		return 0, newDomainError(ErrCodeBelowFrictionStress, "target strength must exceed friction stress σ₀", fields)
	}

	d := math.Pow((sigma-p.FrictionStress)/p.HallPetchCoefficient, -2)
	// sigma 与 sigma_0 极接近时溢出
	if math.IsInf(d, 0) {
		return 0, newDomainError(ErrCodeBelowFrictionStress, "strength below material floor — cannot solve", fields)
	}
	if d <= 0 {
		return 0, newDomainError(ErrCodeInvalidInput, "target yield strength out of range", fields)
	}
	return d, nil
}
