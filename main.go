package main

import (
	"facegate.io/infrastructure"
)

func main() {
	infrastructure.StartServer()
}
