// Package interact defines the prompt driver used by interactive builder
// sessions together with a survey backed terminal implementation and a fixed
// answer driver for non-interactive surfaces.
package interact
