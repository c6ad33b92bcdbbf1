package calculator

import (
	"errors"
	"fmt"
)

// DomainError 物理上无解的输入，不是系统故障
type DomainError struct {
	Code    ErrorCode
	Message string
	// Fields 记录触发错误的输入，用于日志
	Fields map[string]float64
}

type ErrorCode string

const (
	// σ 不高于摩擦应力 σ0，Hall-Petch 无法反解
	ErrCodeBelowFrictionStress ErrorCode = "BELOW_FRICTION_STRESS"

	// 目标晶粒比初始晶粒小，退火只能长大晶粒
	ErrCodeUnreachableByAnnealing ErrorCode = "UNREACHABLE_BY_ANNEALING"

	// NaN、Inf 或非正的晶粒尺寸
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsDomainError unwraps err until it finds a *DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func hasCode(err error, code ErrorCode) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}

func IsBelowFrictionStress(err error) bool {
	return hasCode(err, ErrCodeBelowFrictionStress)
}

func IsUnreachableByAnnealing(err error) bool {
	return hasCode(err, ErrCodeUnreachableByAnnealing)
}

func IsInvalidInput(err error) bool {
	return hasCode(err, ErrCodeInvalidInput)
}

func newDomainError(code ErrorCode, message string, fields map[string]float64) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Fields:  fields,
	}
}
