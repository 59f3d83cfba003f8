package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// streamDoneMarker terminates a server-sent token stream.
const streamDoneMarker = "[DONE]"

// StreamAssetChat posts a prompt to the thread's chat endpoint and consumes
// the server-sent token stream. Each data line is forwarded to onToken as it
// arrives; the concatenated answer is returned once the stream ends.
func (c *HTTPClient) StreamAssetChat(ctx context.Context, courseID, threadID, prompt string, onToken func(token string)) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": prompt})
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("/courses/%s/assets/%s/chat",
		url.PathEscape(courseID), url.PathEscape(threadID))
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("chat error: %w", err)
	}
	defer resp.Body.Close()

	var answer strings.Builder

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		token := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
		if token == streamDoneMarker {
			break
		}
		answer.WriteString(token)
		if onToken != nil {
			onToken(token)
		}
	}
	if err := scanner.Err(); err != nil {
		return answer.String(), fmt.Errorf("chat stream interrupted: %w", err)
	}

	return answer.String(), nil
}
