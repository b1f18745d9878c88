// Package loader resolves form definition documents from the local
// filesystem, an fs.FS or an HTTP endpoint and decodes them into field trees.
package loader
