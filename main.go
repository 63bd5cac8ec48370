package main

import "github.com/hyderoo/dewa-wo-sub001/app"

func main() {
	app.Run()
}
