// Command ordersctl tareas de operación sobre el almacén: esquema y administradores.
//
//	ordersctl migrate
//	ordersctl create-admin --name Ana --email ana@x.com --password ... --phone 555 --class staff
//	ordersctl promote --email ana@x.com
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(bootStore).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
