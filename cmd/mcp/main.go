// Command mcp serves the image generation gateway over MCP stdio, exposing
// one generate tool per provider to MCP clients.
//
// Configuration for Claude Desktop (~/Library/Application Support/Claude/claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "imago": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/imago"
//	        }
//	    }
//	}
//
// API keys are read from the environment (a .env file is honored):
// XAI_API_KEY, GEMINI_API_KEY, TOGETHER_API_KEY, RUNWARE_API_KEY.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spetersoncode/imago/client"
	"github.com/spetersoncode/imago/mcp"
)

func main() {
	godotenv.Load()

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			XAI:      os.Getenv("XAI_API_KEY"),
			Google:   os.Getenv("GEMINI_API_KEY"),
			Together: os.Getenv("TOGETHER_API_KEY"),
			Runware:  os.Getenv("RUNWARE_API_KEY"),
		},
	})

	if err := mcp.ServeStdio(c,
		mcp.WithName("imago"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}
