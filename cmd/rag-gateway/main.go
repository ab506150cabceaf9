// Package main RAG Gateway API Server
//
//	@title			RAG Gateway API
//	@version		1.0
//	@description	Validates question-answering and ingestion requests and forwards them to the RAG backend
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main

import (
	_ "rag-gateway/docs" // This imports the docs package to initialize swagger
)

func main() {
	Execute()
}
