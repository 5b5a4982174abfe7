// Package rag assembles retrieval context for chat answers: it embeds the
// query, searches the vector store, orders the results for readability and
// renders them as a context string with source citations.
package rag
