package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/exp/actionutil"
)

// Installs redis so the default list store works on first boot.
const cloudInit = `#cloud-config
package_update: true
packages:
  - redis-server
runcmd:
  - systemctl enable --now redis-server
`

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx := context.Background()

	token := os.Getenv("HCLOUD_TOKEN")
	if token == "" {
		panic("HCLOUD_TOKEN environment variable is not set")
	}

	client := hcloud.NewClient(hcloud.WithToken(token))

	name := getenv("FLASKR_SERVER_NAME", "flaskr")
	existing, _, err := client.Server.GetByName(ctx, name)
	if err != nil {
		log.Fatalf("error looking up server: %s\n", err)
	}
	if existing != nil {
		fmt.Printf("server %q already exists at %s\n", existing.Name, existing.PublicNet.IPv4.IP)
		return
	}

	result, _, err := client.Server.Create(ctx, hcloud.ServerCreateOpts{
		Name:       name,
		Image:      &hcloud.Image{Name: getenv("FLASKR_SERVER_IMAGE", "ubuntu-24.04")},
		ServerType: &hcloud.ServerType{Name: getenv("FLASKR_SERVER_TYPE", "cpx22")},
		Location:   &hcloud.Location{Name: getenv("FLASKR_SERVER_LOCATION", "hel1")},
		UserData:   cloudInit,
		Labels:     map[string]string{"app": "flaskr"},
	})
	if err != nil {
		log.Fatalf("error creating server: %s\n", err)
	}

	err = client.Action.WaitFor(ctx, actionutil.AppendNext(result.Action, result.NextActions)...)
	if err != nil {
		log.Fatalf("error creating server: %s\n", err)
	}

	server, _, err := client.Server.GetByID(ctx, result.Server.ID)
	if err != nil {
		log.Fatalf("error retrieving server: %s\n", err)
	}
	if server != nil {
		fmt.Printf("server %q is up at %s\n", server.Name, server.PublicNet.IPv4.IP)
	} else {
		fmt.Println("server not found")
	}
}
