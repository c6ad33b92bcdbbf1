package calculator

import (
	"fmt"
	"strings"
)

// Policy 决定退火时间为负时的处理方式
//
// BelowFrictionStress 与 InvalidInput 在任何策略下都直接返回错误。
type Policy string

const (
	PolicyStrict Policy = "strict" // 返回 UnreachableByAnnealing
	PolicyClamp  Policy = "clamp"  // 记录警告，时间取 0
	PolicyWarn   Policy = "warn"   // 记录警告，原样返回负值
)

var ValidPolicies = []Policy{PolicyStrict, PolicyClamp, PolicyWarn}

func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PolicyStrict, nil
	}
	for _, valid := range ValidPolicies {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid policy %q: must be one of %v", s, ValidPolicies)
}
