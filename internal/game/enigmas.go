package game

import "time"

var Enigmas = []Enigma{
	{ID: 1, Kind: "reconstruction", Title: "Puzzle Pieces", Description: "Reconstruct the image from 25 pieces", Difficulty: "easy", TimeLimit: 90 * time.Second, MaxPoints: 100},
	{ID: 2, Kind: "sequence", Title: "Number Sequence", Description: "Complete the number sequence: 2, 4, 6, ?, 10", Difficulty: "easy", TimeLimit: 90 * time.Second, MaxPoints: 100},
	{ID: 3, Kind: "memory", Title: "Memory Challenge", Description: "Remember and reproduce a sequence of 5 colors", Difficulty: "medium", TimeLimit: 120 * time.Second, MaxPoints: 150},
	{ID: 4, Kind: "labyrinth", Title: "Collaborative Maze", Description: "Navigate through the maze - each player controls a section", Difficulty: "medium", TimeLimit: 120 * time.Second, MaxPoints: 150},
	{ID: 5, Kind: "math", Title: "Math Puzzle", Description: "Solve: 15 + 8 x 2 - 10 = ?", Difficulty: "medium", TimeLimit: 120 * time.Second, MaxPoints: 150},
	{ID: 6, Kind: "sequence", Title: "Pattern Recognition", Description: "Identify the pattern: square circle square circle square ?", Difficulty: "medium", TimeLimit: 120 * time.Second, MaxPoints: 200},
	{ID: 7, Kind: "reconstruction", Title: "Complex Puzzle", Description: "Reconstruct the image from 40 pieces", Difficulty: "hard", TimeLimit: 180 * time.Second, MaxPoints: 250},
	{ID: 8, Kind: "memory", Title: "Advanced Memory", Description: "Remember and reproduce a sequence of 8 colors", Difficulty: "hard", TimeLimit: 180 * time.Second, MaxPoints: 300},
	{ID: 9, Kind: "math", Title: "Complex Calculation", Description: "Solve: (25 + 15) x 2 - (30 / 2) = ?", Difficulty: "hard", TimeLimit: 180 * time.Second, MaxPoints: 350},
	{ID: 10, Kind: "labyrinth", Title: "Ultimate Maze", Description: "Navigate the ultimate collaborative maze", Difficulty: "hard", TimeLimit: 180 * time.Second, MaxPoints: 500},
}
