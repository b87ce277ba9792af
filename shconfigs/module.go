package shconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taish/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
