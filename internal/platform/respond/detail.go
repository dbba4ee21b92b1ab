package respond

import "fmt"

// formatDetail usa %+v para que pkg/errors imprima el stack trace.
func formatDetail(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%+v", err)
}
