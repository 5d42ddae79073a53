package main

import (
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/initializers"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/routes"
)

func init() {
	initializers.LoadEnvVariables()
	initializers.ConnectToDb()
	initializers.SyncDatabase()
	initializers.SeedSuperAdmin()
	initializers.StartTokenCleanup()
}

func main() {
	r := routes.SetupRouter(initializers.DB)
	r.Run()
}
