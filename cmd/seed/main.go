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

const baseURL = "http://localhost:8000"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
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

	client := &http.Client{} // embedding and generation can be slow, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Seeding sample documents\n")

	// 1. Ingest sample documents
	color.Yellow("\n1. Ingest sample documents")
	ingestReq := map[string]interface{}{
		"documents": []map[string]interface{}{
			{
				"content":  "PostgreSQL is a powerful, open source object-relational database system. It has more than 35 years of active development and a proven architecture.",
				"metadata": map[string]interface{}{"category": "database", "source": "documentation"},
			},
			{
				"content":  "pgvector is an open-source vector similarity search extension for PostgreSQL. It supports exact and approximate nearest neighbor search.",
				"metadata": map[string]interface{}{"category": "extension", "source": "github"},
			},
			{
				"content":  "RAG (Retrieval-Augmented Generation) combines information retrieval with text generation to provide more accurate and contextual responses.",
				"metadata": map[string]interface{}{"category": "ai", "source": "research"},
			},
		},
	}
	resp, body, err := sendRequest("POST", "/documents", ingestReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. Similarity search with a metadata filter
	color.Yellow("\n2. Search with metadata filter {category: extension}")
	searchReq := map[string]interface{}{
		"query":           "vector similarity search",
		"top_k":           3,
		"metadata_filter": map[string]interface{}{"category": "extension"},
	}
	resp, body, err = sendRequest("POST", "/search", searchReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 3. Grounded question answering
	color.Yellow("\n3. Ask a grounded question")
	queryReq := map[string]interface{}{
		"question": "What is pgvector and how does it relate to PostgreSQL?",
		"top_k":    3,
	}
	resp, body, err = sendRequest("POST", "/query", queryReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Stats snapshot
	color.Yellow("\n4. Store statistics")
	resp, body, err = sendRequest("GET", "/stats", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n✅ Seed completed")
}
