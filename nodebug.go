//go:build !debugArgbind
// +build !debugArgbind

package argbind

const debugging = false

func debugf(string, ...interface{}) {}
func debug(...interface{})          {}
