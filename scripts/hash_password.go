package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Quick utility to generate a bcrypt hash for a password, for seeding the
// first admin account directly in mongo.
// Usage: go run scripts/hash_password.go <password>
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/hash_password.go <password>")
		os.Exit(1)
	}

	password := os.Args[1]

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bcrypt Hash: %s\n", string(hashedPassword))
	fmt.Printf("\nTo seed an admin in MongoDB, run:\n")
	fmt.Printf("db.users.insertOne({\n")
	fmt.Printf("  email: \"admin@flotahub.com\",\n")
	fmt.Printf("  passwordHash: \"%s\",\n", string(hashedPassword))
	fmt.Printf("  name: \"Admin\",\n")
	fmt.Printf("  role: \"admin\",\n")
	fmt.Printf("  isActive: true,\n")
	fmt.Printf("  createdAt: new Date(),\n")
	fmt.Printf("  updatedAt: new Date()\n")
	fmt.Printf("})\n")
}
