package game

// Built-in question set. A real deployment would load these from a
// content service; the server only ever ships prompt and options over
// the wire, the correct index stays here.
var QuizQuestions = []Question{
	{ID: 1, Prompt: "What is the capital of France?", Options: []string{"London", "Paris", "Berlin", "Madrid"}, Correct: 1, Category: "Geography"},
	{ID: 2, Prompt: "In what year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}, Correct: 2, Category: "History"},
	{ID: 3, Prompt: "Who wrote 'Romeo and Juliet'?", Options: []string{"Jane Austen", "William Shakespeare", "Mark Twain", "Charles Dickens"}, Correct: 1, Category: "Literature"},
	{ID: 4, Prompt: "What is the largest planet in our solar system?", Options: []string{"Saturn", "Jupiter", "Neptune", "Uranus"}, Correct: 1, Category: "Science"},
	{ID: 5, Prompt: "Which country is home to the kangaroo?", Options: []string{"New Zealand", "Australia", "South Africa", "Brazil"}, Correct: 1, Category: "Geography"},
	{ID: 6, Prompt: "What is the chemical symbol for Gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, Correct: 2, Category: "Science"},
	{ID: 7, Prompt: "Who painted the Mona Lisa?", Options: []string{"Michelangelo", "Leonardo da Vinci", "Raphael", "Donatello"}, Correct: 1, Category: "Arts & Culture"},
	{ID: 8, Prompt: "What is the smallest country in the world?", Options: []string{"Monaco", "Vatican City", "Liechtenstein", "San Marino"}, Correct: 1, Category: "Geography"},
	{ID: 9, Prompt: "In which year did the Titanic sink?", Options: []string{"1910", "1911", "1912", "1913"}, Correct: 2, Category: "History"},
	{ID: 10, Prompt: "What is the fastest land animal?", Options: []string{"Lion", "Gazelle", "Cheetah", "Greyhound"}, Correct: 2, Category: "Nature"},
	{ID: 11, Prompt: "Who invented the telephone?", Options: []string{"Thomas Edison", "Alexander Graham Bell", "Nikola Tesla", "Benjamin Franklin"}, Correct: 1, Category: "Technology"},
	{ID: 12, Prompt: "What is the currency of Japan?", Options: []string{"Won", "Yuan", "Yen", "Baht"}, Correct: 2, Category: "Geography"},
	{ID: 13, Prompt: "How many strings does a violin have?", Options: []string{"4", "5", "6", "8"}, Correct: 0, Category: "Arts & Culture"},
	{ID: 14, Prompt: "What is the hottest planet in our solar system?", Options: []string{"Mercury", "Venus", "Mars", "Jupiter"}, Correct: 1, Category: "Science"},
	{ID: 15, Prompt: "Who was the first President of the United States?", Options: []string{"Thomas Jefferson", "George Washington", "John Adams", "James Madison"}, Correct: 1, Category: "History"},
}
