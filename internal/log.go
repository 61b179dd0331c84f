/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"log"
	"sync/atomic"
)

var debug atomic.Bool

func SetDebug(enable bool) {
	debug.Store(enable)
}

// Debugf logs a formatted message only when debugging has been enabled.
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Printf("DEBUG: "+format, args...)
	}
}
