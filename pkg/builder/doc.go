// Package builder wraps a form tree with the interaction policy of the form
// builder: destructive operations ask for confirmation through a prompt
// driver, structural floors and rejected uploads are reported back to the
// user, and exports are announced once written.
package builder
