package fscmds

import (
	"github.com/reusee/dscope"
	"github.com/viant/afs"
)

type Module struct {
	dscope.Module
}

func (Module) FileService() afs.Service {
	return afs.New()
}
