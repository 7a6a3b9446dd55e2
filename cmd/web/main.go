package main

import "ulp_backend/internal/app"

func main() {
	app.Run()
}
