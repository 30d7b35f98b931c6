package utils

import (
	"coachly/config"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// RoomClient talks to the video rooms provider (Daily-compatible API).
type RoomClient struct {
	client *resty.Client
}

func NewRoomClient() *RoomClient {
	return &RoomClient{client: resty.New()}
}

type roomResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// EnsureRoom creates a private room named after the booking reference and
// returns its join URL. If the room already exists the provider returns a
// conflict, in which case the existing room is looked up instead.
func (r *RoomClient) EnsureRoom(reference string) (string, error) {
	name := "session-" + reference

	resp, err := r.client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.RoomsApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"name":    name,
			"privacy": "private",
		}).
		Post(config.AppConfig.RoomsApiURL)
	if err != nil {
		log.Printf("Error creating video room for %s: %v", reference, err)
		return "", err
	}

	if resp.StatusCode() == 409 {
		// Room already exists, fetch it
		resp, err = r.client.R().
			SetHeader("Authorization", "Bearer "+config.AppConfig.RoomsApiKey).
			Get(config.AppConfig.RoomsApiURL + "/" + name)
		if err != nil {
			log.Printf("Error fetching existing video room %s: %v", name, err)
			return "", err
		}
	}

	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("Rooms API returned %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("rooms API returned status %d", resp.StatusCode())
	}

	var room roomResponse
	if err := json.Unmarshal(resp.Body(), &room); err != nil {
		log.Printf("Failed to parse rooms API response: %v", err)
		return "", err
	}
	if room.URL == "" {
		return "", fmt.Errorf("rooms API response missing url")
	}

	return room.URL, nil
}
