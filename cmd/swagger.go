// Package main
//
// @title           Boardcamp API
// @version         1.0
// @description     Board-game rental shop backend: categories, games, customers and rentals with pricing and late fees.
// @BasePath        /
package main
