package game

var DrawWords = []string{
	"Cat",
	"House",
	"Tree",
	"Pizza",
	"Robot",
	"Dinosaur",
	"Unicorn",
	"Spaceship",
	"Lighthouse",
	"Penguin",
	"Dragon",
	"Comet",
}

var DrawConstraints = []Constraint{
	{ID: "eyes-closed", Name: "Eyes Closed", Description: "Draw with eyes closed"},
	{ID: "inverted", Name: "Inverted Mouse", Description: "Mouse movements are inverted"},
	{ID: "mirror", Name: "Mirror Mode", Description: "Everything is mirrored"},
	{ID: "no-lift", Name: "No Lift", Description: "Don't lift the pen"},
}
