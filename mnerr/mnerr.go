// Package mnerr holds the error message type shared by all views.
package mnerr

type (
	ErrMsg struct {
		Err error
	}
)

func (m ErrMsg) Error() string {
	return m.Err.Error()
}
