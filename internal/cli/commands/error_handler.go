package commands

import (
	"fmt"
	"io"
	"os"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
)

// HandleError adds a hint for errors the user can usually fix themselves
func HandleError(err error) error {
	if err == nil {
		return nil
	}
	logger.WithError(err).Debug("Command failed")

	switch errors.GetCode(err) {
	case errors.ErrNetworkConnection, errors.ErrTimeout:
		return fmt.Errorf("%w\n\nTip: Check that the admin server is running and that server.url (or --server) points at it.", err)
	case errors.ErrConfigNotFound, errors.ErrConfigParse, errors.ErrConfigInvalid:
		return fmt.Errorf("%w\n\nTip: Use 'gphotos-admin config path' to locate the file or 'gphotos-admin config init' to create one.", err)
	case errors.ErrNotFound:
		return fmt.Errorf("%w\n\nTip: Use 'gphotos-admin containers list' or 'gphotos-admin profiles list' to see what exists.", err)
	case errors.ErrValidationFailed, errors.ErrInvalidInput:
		return fmt.Errorf("%w\n\nTip: Run the command with --help to see the accepted values.", err)
	case errors.ErrLocaleExtraction:
		return fmt.Errorf("%w\n\nTip: Make sure the page has finished loading, or pass --timeout to wait longer.", err)
	default:
		return err
	}
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errors.GetCode(err) {
	case errors.ErrValidationFailed, errors.ErrInvalidInput:
		return 2
	case errors.ErrNotFound, errors.ErrConfigNotFound:
		return 3
	case errors.ErrNetworkConnection, errors.ErrTimeout:
		return 4
	case errors.ErrActionFailed:
		return 5
	default:
		return 1
	}
}

// PrintError writes the processed error to w
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", HandleError(err))
}

// ExitOnError handles errors consistently across CLI commands
func ExitOnError(err error) {
	if err == nil {
		return
	}
	PrintError(os.Stderr, err)
	os.Exit(ExitCode(err))
}
