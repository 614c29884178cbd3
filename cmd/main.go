package main

import (
	"flag"

	marknav "github.com/NYUeServ/marker-navigation"
)

var (
	serverVar   string
	distinctVar bool
	muteVar     bool
)

func init() {
	flag.StringVar(&serverVar, "server", "https://markers.nyueserv.dev", "API Server Host")
	flag.BoolVar(&distinctVar, "distinct-icons", false, "restore each marker's own icon on deselect")
	flag.BoolVar(&muteVar, "mute", false, "disable audio cues")

	flag.Parse()
}

func main() {
	marknav.Run(serverVar, marknav.Options{
		DistinctIcons: distinctVar,
		Mute:          muteVar,
	})
}
