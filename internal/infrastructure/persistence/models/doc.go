// Package models contains the GORM persistence models and their conversions
// to and from domain entities. Domain entities stay free of persistence tags;
// every table gets a model struct here with TableName, ToDomain and FromDomain.
package models
