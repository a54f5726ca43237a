// agriprobe drives a running AgriBot backend end to end: it submits a
// message (lazily creating a conversation), lists the sidebar, and fetches
// the conversation transcript. Useful as a deploy smoke test.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	base := flag.String("base", "http://127.0.0.1:5000", "backend base URL")
	lang := flag.String("lang", "English", "answer language")
	query := flag.String("q", "Tomato pest control?", "question to submit")
	imagePath := flag.String("image", "", "optional image file to attach")
	flag.Parse()

	client := &http.Client{Timeout: 60 * time.Second}

	payload := map[string]any{"text": *query, "language": *lang}
	if *imagePath != "" {
		raw, err := os.ReadFile(*imagePath)
		if err != nil {
			log.Fatalf("read image: %v", err)
		}
		payload["image"] = base64.StdEncoding.EncodeToString(raw)
	}

	var reply struct {
		ConversationID uint   `json:"conversation_id"`
		Role           string `json:"role"`
		Text           string `json:"text"`
		Warning        string `json:"warning"`
		Error          string `json:"error"`
	}
	postJSON(client, *base+"/messages", payload, &reply)
	if reply.Error != "" {
		log.Fatalf("submission failed: %s", reply.Error)
	}
	fmt.Printf("conversation %d, %s reply:\n%s\n", reply.ConversationID, reply.Role, reply.Text)
	if reply.Warning != "" {
		fmt.Printf("warning: %s\n", reply.Warning)
	}

	var convs []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	getJSON(client, *base+"/conversations", &convs)
	fmt.Printf("\nsidebar (%d conversations):\n", len(convs))
	for _, c := range convs {
		fmt.Printf("  #%d %s\n", c.ID, c.Title)
	}

	var msgs []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	}
	getJSON(client, fmt.Sprintf("%s/conversations/%d/messages", *base, reply.ConversationID), &msgs)
	fmt.Printf("\ntranscript (%d messages):\n", len(msgs))
	for _, m := range msgs {
		fmt.Printf("  [%s] %.60s\n", m.Role, m.Text)
	}
}

func postJSON(client *http.Client, url string, body any, out any) {
	b, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	decode(resp, url, out)
}

func getJSON(client *http.Client, url string, out any) {
	resp, err := client.Get(url)
	if err != nil {
		log.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	decode(resp, url, out)
}

func decode(resp *http.Response, url string, out any) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read %s: %v", url, err)
	}
	if resp.StatusCode >= 400 {
		log.Printf("%s returned status %d: %s", url, resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Fatalf("decode %s: %v", url, err)
	}
}
