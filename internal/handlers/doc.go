// Package handlers 暴露 HTTP 层接口，负责路由注册、参数提取与响应包络组装。
// handlers 内部聚焦输入/输出转换，并委托 services 层完成业务逻辑。
package handlers
