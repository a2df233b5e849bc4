// Package errs — тип ошибки, используемый во всём боте: сообщение,
// необязательный контекст ключ/значение и завёрнутая причина.
// Рендерится в один вложенный блок:
// "{msg: <message>, args: <args>, wrappedError: {...}}".
package errs

import (
	"errors"
	"fmt"
	"strings"
)

type CustomError struct {
	message string
	args    map[string]interface{}
	wrapped error
}

// New создаёт ошибку с сообщением; контекст добавляется через Arg/Wrap.
func New(message string) *CustomError {
	return &CustomError{message: message}
}

// Arg добавляет к ошибке пару ключ/значение.
func (e *CustomError) Arg(key string, value interface{}) *CustomError {
	if e.args == nil {
		e.args = make(map[string]interface{})
	}
	e.args[key] = value
	return e
}

// Wrap сохраняет причину; nil игнорируется.
func (e *CustomError) Wrap(err error) *CustomError {
	if err != nil {
		e.wrapped = err
	}
	return e
}

func (e *CustomError) Error() string {
	return e.render()
}

// Unwrap отдаёт причину для errors.Is/As.
func (e *CustomError) Unwrap() error {
	return e.wrapped
}

func (e *CustomError) render() string {
	var b strings.Builder

	b.WriteString("{msg: ")
	b.WriteString(e.message)

	if len(e.args) > 0 {
		fmt.Fprintf(&b, ", args: %v", e.args)
	}

	if e.wrapped != nil {
		// Вложенный CustomError рендерится своим блоком без лишних скобок.
		var inner *CustomError
		if errors.As(e.wrapped, &inner) {
			b.WriteString(", wrappedError: ")
			b.WriteString(inner.render())
		} else {
			fmt.Fprintf(&b, ", wrappedError: {%v}", e.wrapped)
		}
	}

	b.WriteString("}")
	return b.String()
}
