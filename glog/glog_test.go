// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package glog

import (
	"testing"

	"github.com/aristanetworks/densehash/logger"
)

// Glog must satisfy logger.Logger; this is a compile-time check as much as
// a runtime one.
var _ logger.Logger = (*Glog)(nil)

func TestGlogMethodsDoNotPanic(t *testing.T) {
	g := &Glog{}
	g.Info("info")
	g.Infof("info %d", 1)
	g.Warning("warning")
	g.Warningf("warning %d", 1)
	g.Error("error")
	g.Errorf("error %d", 1)
}
