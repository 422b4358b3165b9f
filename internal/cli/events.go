package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/web/ws"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput   bool
		useWebSocket bool
	)

	cmd := &cobra.Command{
		Use:   "events <game-id>",
		Short: "Stream live updates of a game",
		Long: `Connect to the game's live feed and stream events in real-time.

Events include:
  - connected: Feed established (SSE only)
  - game-update: The game changed; data is the full game snapshot
  - game-deleted: The game was deleted

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if useWebSocket {
				return streamWebSocket(ctx, args[0], jsonOutput)
			}
			return streamEvents(ctx, args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&useWebSocket, "websocket", false, "Use the websocket feed instead of SSE")

	return cmd
}

// SSEEvent represents a parsed live event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, gameID string, jsonOutput bool) error {
	// Build SSE URL - note: SSE is on the web router, not the API router
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/games/" + gameID + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Connected to game %s\n", gameID)
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" {
				printEvent(currentEvent, strings.Join(dataLines, "\n"), jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func streamWebSocket(ctx context.Context, gameID string, jsonOutput bool) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, client.WebSocketURL("/games/"+gameID+"/ws"), nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if !jsonOutput {
		fmt.Printf("Connected to game %s\n", gameID)
	}

	// Unblock the read loop on interrupt
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	for {
		var frame ws.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !jsonOutput {
					fmt.Println("Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printEvent(frame.Event, string(frame.Data), jsonOutput)
	}
}

func printEvent(event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	fmt.Printf("[%s] %s: %s\n", timestamp, event, describeEvent(event, data))
}

// describeEvent summarises a game snapshot for display, falling back to the raw data
func describeEvent(event, data string) string {
	if event == "game-update" {
		var g response.Game
		if err := json.Unmarshal([]byte(data), &g); err == nil {
			scores := make([]string, len(g.Players))
			for i, p := range g.Players {
				marker := ""
				if p.IsCurrentPlayer {
					marker = "*"
				}
				scores[i] = fmt.Sprintf("%s%s %d", marker, p.Name, p.Score)
			}
			summary := fmt.Sprintf("%s [%s] %s", g.ID, g.Phase, strings.Join(scores, ", "))
			if n := len(g.Throws); n > 0 {
				summary += " last " + g.Throws[n-1].Label
			}
			return summary
		}
	}

	// Truncate data if it's too long for display
	displayData := data
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	return strings.ReplaceAll(displayData, "\n", " ")
}
