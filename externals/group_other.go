//go:build !unix

package externals

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {
}
