package log

// 基于zap的日志插件：标准输出、标准错误和按大小轮转的文件

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Plugin = zapcore.Core

// 在默认选项（调用者信息、DPanic以上打印堆栈）之后追加options
func NewLogger(plugin zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(plugin, append(DefaultOption(), options...)...)
}

func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(DefaultEncoder(), writer, enabler)
}

func NewStdoutPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stdout)), enabler)
}

func NewStderrPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

// Lumberjack logger虽然持有File但没有暴露sync方法，所以额外返回一个closer，需要保证在进程退出前close以保证写入的内容全部刷到磁盘
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	var writer = DefaultLumberjackLogger()
	writer.Filename = filePath
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

/*
输入日志级别文本和日志文件路径，输出日志器、需要在退出前关闭的closer和错误

文件路径为空时写到标准错误，标准输出留给命令的提取结果
*/
func New(levelText, filePath string) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(levelText))
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	if filePath == "" {
		return NewLogger(NewStderrPlugin(level)), nopCloser{}, nil
	}
	plugin, closer := NewFilePlugin(filePath, level)
	return NewLogger(plugin), closer, nil
}
