package main

import (
	"github.com/Glory2TheLord/FitLogV1/config"
	"github.com/Glory2TheLord/FitLogV1/routes"
	"github.com/Glory2TheLord/FitLogV1/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter(config.DB)
	r.Run(":8080")
}
