// SPDX-License-Identifier: Unlicense OR MIT

package app

// The headless backend is always linked in as the probe of last
// resort. Native backends register themselves the same way and win
// on priority.
import _ "github.com/openwl/owl/app/driver/headless"
