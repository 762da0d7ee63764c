// zionctl is the operator tool for the Zion Impact FM site: it reads the
// station API and submits forms the way the site does.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
