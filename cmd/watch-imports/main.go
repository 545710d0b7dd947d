// watch-imports tails the import progress feed of a running api-server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

type anyEvent map[string]any

func main() {
	addr := flag.String("addr", "ws://127.0.0.1:8080/ws", "progress websocket URL")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	for {
		if err := run(*addr, *pretty); err != nil {
			log.Printf("[watch-imports] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, pretty bool) error {
	ws, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer ws.Close()

	log.Printf("[watch-imports] connected to %s", addr)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return err
		}

		if !pretty {
			fmt.Println(string(msg))
			continue
		}

		var obj anyEvent
		if err := json.Unmarshal(msg, &obj); err != nil {
			fmt.Println(string(msg))
			continue
		}

		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
}
