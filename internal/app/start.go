package app

import (
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/screens/quiz"
)

func quizFor(opts Options) screen.Screen {
	return quiz.New(opts.Bank, opts.Progress, opts.Events, opts.Progress.State().CurrentStep)
}
