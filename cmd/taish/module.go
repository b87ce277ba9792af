package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taish/repls"
)

type Module struct {
	dscope.Module
	REPLs repls.Module
}
