package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrCorruptState   = errors.New("corrupt state document")
	ErrUnknownSetting = errors.New("unknown setting")
	ErrPluginTimeout  = errors.New("plugin call timed out")
)
