// SPDX-License-Identifier: Apache-2.0

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no listen
// address is provided in the server configuration, resulting in no
// transport handlers being initialized. Callers that allow running
// without the HTTP surface must check the address before calling.
var errNoHandlersAreCreated = errors.New("no handlers are created")
