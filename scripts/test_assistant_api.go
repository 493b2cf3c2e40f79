package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, generation can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte) map[string]interface{} {
	var envelope map[string]interface{}
	json.Unmarshal(body, &envelope)
	if data, ok := envelope["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

func main() {
	color.Cyan("🚀 Starting Writing Assistant API Walkthrough\n")

	// 1. Create Session
	color.Yellow("\n1. Create Session")
	resp, body, err := sendRequest("POST", "/assistant/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var sessionID string
	if data := dataField(body); data != nil {
		if id, ok := data["id"].(string); ok {
			sessionID = id
			fmt.Printf("Created Session ID: %s\n", sessionID)
		}
	}
	if sessionID == "" {
		color.Red("No session ID returned, aborting")
		os.Exit(1)
	}
	base := "/assistant/v1/session/" + sessionID

	// 2. List Modes
	color.Yellow("\n2. List Modes")
	resp, body, err = sendRequest("GET", "/assistant/v1/modes", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var modesResp map[string]interface{}
	json.Unmarshal(body, &modesResp)
	prettyPrint(modesResp)

	// 3. Select Grammar Mode
	color.Yellow("\n3. Select Grammar Mode")
	resp, body, err = sendRequest("PUT", base+"/mode", map[string]interface{}{"mode": "grammar"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		if messages, ok := data["messages"].([]interface{}); ok && len(messages) > 0 {
			if greeting, ok := messages[0].(map[string]interface{}); ok {
				fmt.Printf("Greeting: %s\n", greeting["content"])
			}
		}
	}

	// 4. Type a Draft
	color.Yellow("\n4. Update Draft")
	resp, body, err = sendRequest("PATCH", base+"/draft", map[string]interface{}{"draft": "he go to school yesterday"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		fmt.Printf("Word count: %v\n", data["word_count"])
	}

	// 5. Grammar Tools
	color.Yellow("\n5. List Grammar Templates & Apply 'Check Punctuation'")
	resp, body, err = sendRequest("GET", "/assistant/v1/templates?mode=grammar", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var templatesResp map[string]interface{}
	json.Unmarshal(body, &templatesResp)
	prettyPrint(templatesResp)

	resp, body, err = sendRequest("POST", base+"/template", map[string]interface{}{"template": "Check Punctuation"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		fmt.Printf("Draft is now: %q\n", data["draft"])
	}

	// 6. Submit for Generation
	color.Yellow("\n6. Submit (this calls the model, may take a while)")
	resp, body, err = sendRequest("POST", base+"/submit", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		if reply, ok := data["reply"].(map[string]interface{}); ok {
			fmt.Printf("Reply: %s\n", reply["content"])
		}
	} else {
		var errResp map[string]interface{}
		json.Unmarshal(body, &errResp)
		prettyPrint(errResp)
	}

	// 7. History, Replay and Copy
	color.Yellow("\n7. History")
	resp, body, err = sendRequest("GET", base+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var historyResp map[string]interface{}
	json.Unmarshal(body, &historyResp)
	prettyPrint(historyResp)

	color.Yellow("\n7a. Copy Latest Output")
	resp, body, err = sendRequest("POST", base+"/history/0/copy", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var copyResp map[string]interface{}
		json.Unmarshal(body, &copyResp)
		fmt.Printf("Message: %v\n", copyResp["message"])
	}

	// 8. Reset, then Replay from History
	color.Yellow("\n8. Reset Session")
	resp, _, err = sendRequest("POST", base+"/reset", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Yellow("\n8a. Replay History Entry 0")
	resp, body, err = sendRequest("POST", base+"/history/0/replay", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		fmt.Printf("Restored mode: %v, draft: %q\n", data["mode"], data["draft"])
	}

	color.Cyan("\n✅ Walkthrough Complete")
}
