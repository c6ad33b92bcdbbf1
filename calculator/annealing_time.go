package calculator

import (
	"math"

	"heattreat/steel_type"
)

// PredictAnnealingTime 根据晶粒长大动力学 d1^n - d0^n = K * t 计算退火时间，单位 h
//
// d1 < d0 时 t 为负：退火不能细化晶粒，返回 UnreachableByAnnealing，
// 同时返回算出的负值供调用方按策略处理。
func PredictAnnealingTime(d0, d1 float64, p steel_type.Parameter) (float64, error) {
	fields := map[string]float64{
		"d0": d0,
		"d1": d1,
		"n":  p.GrowthExponent,
		"K":  p.GrowthRateConstant,
	}
	if err := checkGrainSize(d0, "initial grain size must be a positive finite number", fields); err != nil {
		return 0, err
	}
	if err := checkGrainSize(d1, "final grain size must be a positive finite number", fields); err != nil {
		return 0, err
	}

	t := (math.Pow(d1, p.GrowthExponent) - math.Pow(d0, p.GrowthExponent)) / p.GrowthRateConstant
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return 0, newDomainError(ErrCodeInvalidInput, "grain size out of range", fields)
	}
	if t < 0 {
		return t, newDomainError(ErrCodeUnreachableByAnnealing,
			"target strength unreachable by annealing from the given initial grain size", fields)
	}
	return t, nil
}

func checkGrainSize(d float64, message string, fields map[string]float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return newDomainError(ErrCodeInvalidInput, message, fields)
	}
	return nil
}
