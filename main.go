package main

import (
	"context"
	"log"
	"os"

	"PicQuest/CronJobs"
	"PicQuest/FiberConfig"
	"PicQuest/Models"
	"PicQuest/Notifications"
	"PicQuest/TaskGen"
)

func main() {
	Models.LoadEnv()
	Models.Connect()

	var store TaskGen.TaskStore

	credentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentialsFile != "" {
		app, err := Notifications.InitFirebase(credentialsFile)
		if err != nil {
			log.Fatal("Failed to initialize Firebase:", err)
		}
		firestoreStore, err := TaskGen.NewFirestoreTaskStore(context.Background(), app)
		if err != nil {
			log.Fatal("Failed to initialize Firestore task store:", err)
		}
		store = firestoreStore
	} else {
		// Local development without credentials, tasks do not survive restarts
		log.Println("FIREBASE_CREDENTIALS_FILE not set, using in-memory task store")
		store = TaskGen.NewMemoryTaskStore()
	}

	gemini := TaskGen.NewGeminiClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	generator, err := TaskGen.NewGenerator(gemini, store)
	if err != nil {
		log.Fatal("Failed to create task generator:", err)
	}

	taskGenJob := CronJobs.NewTaskGenJob(generator, true)
	if err := taskGenJob.Start(); err != nil {
		log.Fatal("Failed to start task generation scheduler:", err)
	}

	FiberConfig.FiberConfig(store)
}
