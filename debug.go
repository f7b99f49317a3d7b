//go:build debugArgbind
// +build debugArgbind

package argbind

import (
	"log"
)

var debugging = true

func debugf(fmt string, args ...interface{}) {
	log.Printf("argbind: "+fmt, args...)
}

func debug(args ...interface{}) {
	log.Println(append([]interface{}{"argbind:"}, args...)...)
}
