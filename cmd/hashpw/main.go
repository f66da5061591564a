// Command hashpw reads a password from stdin and prints the scrypt hash to
// put in FLASKR_PASSWORD.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"flaskr/internal/utils"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("read password: %s\n", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		log.Fatal("empty password")
	}

	hash, err := utils.GeneratePasswordHash(password)
	if err != nil {
		log.Fatalf("hash password: %s\n", err)
	}
	fmt.Println(hash)
}
