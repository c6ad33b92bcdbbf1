package model

// 请求类型
const (
	TypeEnv    = "env"
	TypeLoad   = "load"
	TypeStart  = "start"
	TypeUnload = "unload"
	TypeStatus = "status"
)

// 回复类型
const (
	TypePlanned   = "planned"
	TypeLoaded    = "loaded"
	TypeProgress  = "progress"
	TypeCompleted = "completed"
	TypeUnloaded  = "unloaded"
	TypeError     = "error"
)

// 错误码，领域错误使用 calculator.ErrorCode
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNoPlan            = "NO_PLAN"
	CodeInternal          = "INTERNAL"
)
