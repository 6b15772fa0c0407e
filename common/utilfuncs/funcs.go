package utilfuncs

import (
	"fmt"
	"os"
)

// PanicIfError terminates the process on configuration errors that cannot be recovered.
func PanicIfError(err error, message string) {
	if err != nil {
		fmt.Println(message)
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
