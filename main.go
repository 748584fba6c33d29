package main

import (
	"os"

	mlog "github.com/mike504110403/goutils/log"

	"menu_projection_system/cmd"
)

func Init() {
	logConfig := mlog.Config{
		LogType: mlog.LogType(os.Getenv("Log_Type")),
		EnvMode: mlog.EnvMode(os.Getenv("Env_Mode")),
	}
	mlog.Init(logConfig)
}

func main() {
	Init()
	cmd.Execute()
}
