package servers

import (
	"fmt"

	"github.com/magnetlabs/magnet/internal/cmd/output"
	"github.com/magnetlabs/magnet/internal/servers"
)

// report renders the result, and fails the command when the operation did.
func report(handler output.Handler[servers.Result], result servers.Result) error {
	if err := handler.HandleResult(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("operation failed: %s", result.Message)
	}
	return nil
}
