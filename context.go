package main

import (
	"data-catalogue/catalogue"
	"data-catalogue/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"io"
	"os"
	"time"
)

type Context struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.SugaredLogger

	// Console output for summaries and progress
	Out io.Writer
	Now func() time.Time
}

func (ctx *Context) now() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}

	return ctx.Now()
}

func (ctx *Context) out() io.Writer {
	if ctx.Out == nil {
		return os.Stdout
	}

	return ctx.Out
}

func (ctx *Context) catalogueOptions() catalogue.Options {
	return catalogue.Options{
		Logger:              ctx.Log,
		FileNamesToIgnore:   ctx.Config.FileNamesToIgnore,
		FolderNamesToIgnore: ctx.Config.FolderNamesToIgnore,
	}
}
