package Notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"PicQuest/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Global Firebase client
var firebaseApp *firebase.App
var messagingClient *messaging.Client
var ctx = context.Background()

// InitFirebase sets up the Firebase app and messaging client (call once at
// startup). The returned app is also used to open the Firestore task store.
func InitFirebase(credentialsFile string) (*firebase.App, error) {
	opt := option.WithCredentialsFile(credentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseApp = app
	messagingClient = client
	log.Println("Firebase initialized successfully")
	return app, nil
}

// Notify records an in-app notification for the user and pushes it to their
// registered device, if any. Push failures are logged, not surfaced: the
// in-app record is the source of truth.
func Notify(db *gorm.DB, userID uint, ntype, title, body string, data map[string]string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}

	notification := Models.Notification{
		UserID: userID,
		Type:   ntype,
		Title:  title,
		Body:   body,
		Data:   payload,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Failed to store notification for user %d: %v", userID, err)
		return err
	}

	var token Models.FCMToken
	if err := db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		// No registered device, in-app notification only
		return nil
	}

	if err := sendFirebaseNotification(token.Value, title, body, data); err != nil {
		log.Printf("Error sending push notification to user %d: %v", userID, err)
	}
	return nil
}

// Functional Firebase notification sender
func sendFirebaseNotification(fcmToken, title, body string, data map[string]string) error {
	// Check if Firebase client is initialized
	if messagingClient == nil {
		return fmt.Errorf("firebase client not initialized - call InitFirebase() first")
	}

	message := &messaging.Message{
		Token: fcmToken,
		Data:  data,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Icon:  "ic_notification",
				Sound: "default",
			},
			Priority: "high",
		},
	}

	response, err := messagingClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending Firebase message: %v", err)
	}

	log.Printf("Successfully sent Firebase notification: %s", response)
	return nil
}
