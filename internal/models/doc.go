// Package models 声明领域实体（User、Post）及其归一化构造与累积式校验规则。
// 实体是纯值对象，不感知存储与 HTTP 细节。
package models
