// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package encoder

import (
	"fmt"

	"github.com/docstore/docenc/desc"
)

// DepthError is returned when constructing a builder at the configured depth
// ceiling. Reaching the ceiling almost always means the object graph being
// encoded contains a reference cycle; retrying without breaking the cycle
// reproduces the same failure.
type DepthError struct {
	Depth int
	Limit int
}

// Error implements the error interface.
func (e DepthError) Error() string {
	return fmt.Sprintf("exceeded maximum encoding depth of %d; the object graph likely contains a reference cycle", e.Limit)
}

// InvalidStructureError is returned when a nested descriptor's kind is not
// one the encoder understands in context, or when a value supplies more
// fields than its descriptor declares. It indicates a mismatch between the
// descriptor and the value that the caller must fix.
type InvalidStructureError struct {
	Kind   desc.Kind
	Reason string
}

// Error implements the error interface.
func (e InvalidStructureError) Error() string {
	return fmt.Sprintf("invalid structure: %s (kind %s)", e.Reason, e.Kind)
}

// InvalidStateError is returned when a method is invoked on a builder that
// has already been finalized.
type InvalidStateError struct {
	Method string
}

// Error implements the error interface.
func (e InvalidStateError) Error() string {
	return fmt.Sprintf("cannot call %s on a finalized builder", e.Method)
}
