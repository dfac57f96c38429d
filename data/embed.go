// Package data 嵌入默认配置文件
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 声明放在 data/ 目录中，主程序、移动端和命令行工具共用。
package data

import "embed"

// FS 数据目录的只读文件系统，路径相对于 data/（例如 "config.yaml"）
//
//go:embed config.yaml
var FS embed.FS
